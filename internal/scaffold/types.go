package scaffold

import (
	"io/fs"

	"github.com/heal-sync/healsync-init/internal/console"
)

type op struct {
	Action console.Action
	Path   string // layout path (for reporting)
	Abs    string // resolved target
	Mode   fs.FileMode
	Data   string
	Exists bool
}
