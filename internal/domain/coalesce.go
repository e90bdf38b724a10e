package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrPtr returns a pointer to s, for building PayloadPatch values.
func StrPtr(s string) *string {
	return &s
}

// KindPtr returns a pointer to k.
func KindPtr(k NodeKind) *NodeKind {
	return &k
}
