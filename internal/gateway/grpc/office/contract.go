//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=office_test
package office

import (
	"context"

	"google.golang.org/grpc"
)

// invoker: подмножество *grpc.ClientConn. Справочник офисов описан без сгенерированных стабов,
// запросы и ответы передаются как structpb.Struct.
type invoker interface {
	Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
