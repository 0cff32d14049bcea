package delimiter

// Set is a fixed table of single-byte delimiters
type Set struct {
	table [256]bool
}

// New builds a Set from the bytes of chars
func New(chars string) Set {
	var s Set
	for i := 0; i < len(chars); i++ {
		s.table[chars[i]] = true
	}
	return s
}

var (
	// Search delimiters mark word boundaries for whole-word search
	Search = New(" .,?!\n;:\"'{}[]()_-+=*&^%$#")

	// Sentence delimiters terminate a sentence
	Sentence = New(".!?")

	// Word delimiters separate words during segmentation
	Word = New(" .!?#%&*+=-_{}[]'\"\n/()")
)

// IsDelimiter reports whether c belongs to the set
func (s Set) IsDelimiter(c byte) bool {
	return s.table[c]
}
