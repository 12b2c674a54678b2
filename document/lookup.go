package document

// ValueAt walks path from root, descending through tables by key and
// arrays by index, returning the Value found there. Used by the query
// services (C9) to turn a cursor-resolved accessor path into the Value
// they report on.
func ValueAt(root *Table, path Path) (*Value, bool) {
	if len(path) == 0 {
		return &Value{Kind: TableValue, Table: root}, true
	}
	cur := &Value{Kind: TableValue, Table: root}
	for _, a := range path {
		var ok bool
		cur, ok = step(cur, a)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func step(v *Value, a Accessor) (*Value, bool) {
	switch a.Kind {
	case AccessorKey:
		if !v.isTableLike() {
			return nil, false
		}
		return v.Table.Get(a.Key)
	case AccessorIndex:
		if v.Kind != ArrayValue || v.Array == nil {
			return nil, false
		}
		if a.Index < 0 || a.Index >= len(v.Array.Elements) {
			return nil, false
		}
		return v.Array.Elements[a.Index], true
	}
	return nil, false
}
