package watcher

import "fmt"

// Kind identifies which variant a Notice holds.
type Kind uint8

const (
	// KindOther is the catch-all for anything the backends report that has no
	// dedicated variant.
	KindOther Kind = iota
	// KindNoticeWrite is an early signal that a path started being written.
	KindNoticeWrite
	// KindNoticeRemove is an early signal that a path is being removed.
	KindNoticeRemove
	KindCreate
	KindWrite
	KindRemove
	KindRename
	// KindChmod reports a metadata-only change.
	KindChmod
	// KindRescan means events were lost and the tree should be re-examined.
	KindRescan
)

var kindNames = map[Kind]string{
	KindOther:        "Other",
	KindNoticeWrite:  "NoticeWrite",
	KindNoticeRemove: "NoticeRemove",
	KindCreate:       "Create",
	KindWrite:        "Write",
	KindRemove:       "Remove",
	KindRename:       "Rename",
	KindChmod:        "Chmod",
	KindRescan:       "Rescan",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Notice is one coalesced change notification.
type Notice struct {
	Kind Kind
	// Path is the affected path. For KindRename it equals To.
	Path string
	// From and To are only set for KindRename.
	From string
	To   string
}

// Qualifies reports whether the notice should trigger a command run.
func (n Notice) Qualifies() bool {
	switch n.Kind {
	case KindNoticeWrite, KindNoticeRemove, KindCreate, KindWrite, KindRemove, KindRename:
		return true
	default:
		return false
	}
}

// String renders the notice the way it is echoed to the user,
// e.g. Write("/tmp/a") or Rename("/tmp/a", "/tmp/b").
func (n Notice) String() string {
	switch n.Kind {
	case KindRename:
		return fmt.Sprintf("%s(%q, %q)", n.Kind, n.From, n.To)
	case KindRescan:
		return n.Kind.String()
	case KindOther:
		if n.Path == "" {
			return n.Kind.String()
		}
	}
	return fmt.Sprintf("%s(%q)", n.Kind, n.Path)
}
