package entities

type Office struct {
	ID         string
	Name       string
	RegionCode string
}

func ContainsOffice(offices []Office, id string) bool {
	for _, o := range offices {
		if o.ID == id {
			return true
		}
	}
	return false
}
