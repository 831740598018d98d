package mapping

import "github.com/google/uuid"

// idSpace namespaces mapping identifiers.
var idSpace = uuid.MustParse("6f1c5a0e-3b8e-4f59-9d8e-2a7c1b6e4d10")

// ID derives a stable identifier from a source path and a target path, so
// the same pair always yields the same id.
func ID(sourcePath, targetPath string) string {
	return uuid.NewSHA1(idSpace, []byte(sourcePath+"\x00"+targetPath)).String()
}
