package parse

// Char is the constraint for element types that can be classified as
// characters. Classification is ASCII only, for runes and bytes alike.
type Char interface {
	~rune | ~byte
}

func IsAlpha[T Char](c T) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func IsDigit[T Char](c T) bool {
	return '0' <= c && c <= '9'
}

func IsHexDigit[T Char](c T) bool {
	return IsDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func IsAlphaNumeric[T Char](c T) bool {
	return IsAlpha(c) || IsDigit(c)
}

// IsSpace reports spaces and tabs.
func IsSpace[T Char](c T) bool {
	return c == ' ' || c == '\t'
}

// IsMultiSpace reports spaces, tabs, carriage returns and line feeds.
func IsMultiSpace[T Char](c T) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func IsNewline[T Char](c T) bool {
	return c == '\n'
}
