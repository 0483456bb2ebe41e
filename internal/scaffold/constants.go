package scaffold

const DefaultDir = "."

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

const (
	tempPrefix = ".healsync-"
	tempSuffix = ".tmp"
)

const tracerName = "github.com/heal-sync/healsync-init/internal/scaffold"
