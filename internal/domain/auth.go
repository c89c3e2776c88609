package domain

// AuthMethod identifies how the CLI authenticates against the YouTube Data API.
// The value is the code a user types at the selection prompt.
type AuthMethod string

const (
	AuthMethodAPIKey AuthMethod = "1"
	AuthMethodOAuth  AuthMethod = "2"
)

// String implements Stringer interface
func (m AuthMethod) String() string {
	switch m {
	case AuthMethodAPIKey:
		return "API KEY"
	case AuthMethodOAuth:
		return "OAuth"
	default:
		return "unknown"
	}
}

// AuthMethods is the ordered set of methods available for a run.
type AuthMethods []AuthMethod

func (ms AuthMethods) Contains(method AuthMethod) bool {
	for _, m := range ms {
		if m == method {
			return true
		}
	}
	return false
}
