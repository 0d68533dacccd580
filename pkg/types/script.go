package types

// Script is one record of the script collection. A record is either a
// playable script or a group that other records reference through ParentID.
// The JSON field names are the persisted layout; records written before
// groups existed omit isGroup and parentId and decode as top-level scripts.
type Script struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	FontSize    *int     `json:"fontSize,omitempty"`
	ScrollSpeed *float64 `json:"scrollSpeed,omitempty"`
	ParentID    *int64   `json:"parentId"`
	IsGroup     bool     `json:"isGroup"`
}

// IsTopLevel reports whether the record has no parent.
func (s Script) IsTopLevel() bool {
	return s.ParentID == nil
}

// HasParent reports whether the record is a direct child of the given group id.
func (s Script) HasParent(id int64) bool {
	return s.ParentID != nil && *s.ParentID == id
}

// Clone returns a deep copy. The pointer fields are copied so the caller can
// hold the value without aliasing the collection.
func (s Script) Clone() Script {
	c := s
	if s.FontSize != nil {
		v := *s.FontSize
		c.FontSize = &v
	}
	if s.ScrollSpeed != nil {
		v := *s.ScrollSpeed
		c.ScrollSpeed = &v
	}
	if s.ParentID != nil {
		v := *s.ParentID
		c.ParentID = &v
	}
	return c
}

// Draft converts the record back into a Draft, the form used for edits.
func (s Script) Draft() Draft {
	return Draft{
		Name:        s.Name,
		Content:     s.Content,
		FontSize:    s.FontSize,
		ScrollSpeed: s.ScrollSpeed,
		ParentID:    s.ParentID,
		IsGroup:     s.IsGroup,
	}.Clone()
}

// IntPtr, FloatPtr and IDPtr build the optional fields of a Script or Draft.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

func IDPtr(v int64) *int64 { return &v }
