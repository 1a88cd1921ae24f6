package models

import "time"

// RootFolderName is the reserved name of the virtual root. The root is never
// persisted: a nil ParentID (or nil folder reference) means "lives in Home".
const RootFolderName = "Home"

type Folder struct {
	ID        string
	OwnerID   string
	ParentID  *string
	Name      string
	CreatedAt time.Time
}

// IsRoot reports whether the folder is an owner's protected root.
func (f Folder) IsRoot() bool {
	return f.ParentID == nil && f.Name == RootFolderName
}
