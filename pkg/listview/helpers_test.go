package listview

type testEntity struct {
	ID       string
	Name     string
	ParentID string
	Status   Status
	Position int
	Sort     int
}

func (e testEntity) GetID() string       { return e.ID }
func (e testEntity) GetName() string     { return e.Name }
func (e testEntity) GetStatus() Status   { return e.Status }
func (e testEntity) GetParentID() string { return e.ParentID }

func ids[T Item](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}

func rowIDs[T Node](rows []Row[T]) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Item.GetID())
	}
	return out
}
