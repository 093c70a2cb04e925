package objval

import "fmt"

// Provider represents a remote storage provider.
type Provider int

const (
	// ProviderAWS is the AWS cloud provider.
	ProviderAWS Provider = iota + 1
)

// String returns a human readable representation of the storage provider.
func (p Provider) String() string {
	switch p {
	case ProviderAWS:
		return "AWS"
	}

	panic(fmt.Sprintf("unknown provider %d", p))
}
