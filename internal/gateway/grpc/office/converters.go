package office

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
	"logistics/internal/entities"
)

func toRequest(regionCode string) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{
		"region_code": regionCode,
	})
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

func toDomainList(resp *structpb.Struct) ([]entities.Office, error) {
	if resp == nil {
		return []entities.Office{}, nil
	}

	list := resp.GetFields()["offices"].GetListValue()
	if list == nil {
		return []entities.Office{}, nil
	}

	offices := make([]entities.Office, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		id := fields["id"].GetStringValue()
		if id == "" {
			return nil, fmt.Errorf("office #%d has no id", i)
		}
		offices = append(offices, entities.Office{
			ID:         id,
			Name:       fields["name"].GetStringValue(),
			RegionCode: fields["region_code"].GetStringValue(),
		})
	}
	return offices, nil
}
