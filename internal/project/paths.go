package project

import "strings"

// NormalizeTemplateBase returns the "./"-relative form of a template path.
// "x", "./x", "x/" and "/x" all normalize to "./x".
func NormalizeTemplateBase(p string) string {
	p = strings.TrimRight(p, "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimLeft(p, "/")
	if p == "" || p == "." {
		return "."
	}
	return "./" + p
}

// ProjectRoot is the parent directory of a normalized template base.
// Preview images live there rather than inside the template.
func ProjectRoot(base string) string {
	i := strings.LastIndex(base, "/")
	if i <= 0 {
		return "."
	}
	return base[:i]
}

// Join appends a relative file name to a normalized directory.
func Join(dir, file string) string {
	file = strings.TrimPrefix(file, "./")
	file = strings.TrimLeft(file, "/")
	return dir + "/" + file
}

// DocumentPath puts a configured document path in "./" form.
func DocumentPath(p string) string {
	if strings.HasPrefix(p, "./") {
		return p
	}
	return "./" + strings.TrimLeft(p, "/")
}
