package tokens

// Filter selects records by an arbitrary subset of the identity fields. A
// nil or empty slice is a wildcard for that field; provided fields are
// combined by intersection. The zero Filter matches every record.
type Filter struct {
	ClientNames        []string
	AuthorizationFlows []string
	ClientIDs          []string
	UserIdentifiers    []string
}

// Empty reports whether the filter constrains nothing, which makes removal
// a deliberate "remove everything" operation.
func (f Filter) Empty() bool {
	return len(f.ClientNames) == 0 &&
		len(f.AuthorizationFlows) == 0 &&
		len(f.ClientIDs) == 0 &&
		len(f.UserIdentifiers) == 0
}

// Matches reports whether an identity satisfies every provided constraint.
func (f Filter) Matches(id Identity) bool {
	return matchField(f.ClientNames, id.ClientName) &&
		matchField(f.AuthorizationFlows, id.AuthorizationFlow) &&
		matchField(f.ClientIDs, id.ClientID) &&
		matchField(f.UserIdentifiers, id.UserIdentifier)
}

func matchField(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
