package mapping

import "strings"

// splitRelativePath derives the filename and extension portions of a
// relative path, per the portable rule in the design notes: filename is
// the substring after the last "/" (or the whole string if there is
// none); extension is the substring after the last "." in the filename
// (or empty if there is none). Windows back-slash paths are not
// supported.
func splitRelativePath(relativePath string) (filename, extension string) {
	filename = relativePath
	if i := strings.LastIndexByte(relativePath, '/'); i >= 0 {
		filename = relativePath[i+1:]
	}
	extension = ""
	if i := strings.LastIndexByte(filename, '.'); i >= 0 {
		extension = filename[i+1:]
	}
	return filename, extension
}
