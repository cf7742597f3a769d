package config

const SourceFileExt = ".weld"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".weld"}

// Importable data formats, by extension.
var (
	JSONExtensions = []string{".json"}
	YAMLExtensions = []string{".yaml", ".yml"}
	TOMLExtensions = []string{".toml"}
	TextExtensions = []string{".txt"}
)

// MaxEvalDepth bounds the recursion depth of the evaluator so that
// pathological inputs (deeply nested merges, long thunk chains) fail
// cleanly instead of overflowing the native stack.
const MaxEvalDepth = 20000

// MaxParseDepth bounds expression nesting in the parser.
const MaxParseDepth = 500
