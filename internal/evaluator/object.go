package evaluator

import "hash/fnv"

type ObjectType string

const (
	NUMBER_OBJ       = "NUMBER"
	STRING_OBJ       = "STRING"
	BOOLEAN_OBJ      = "BOOLEAN"
	NULL_OBJ         = "NULL"
	ENUM_TAG_OBJ     = "ENUM_TAG"
	ENUM_VARIANT_OBJ = "ENUM_VARIANT"
	ARRAY_OBJ        = "ARRAY"
	RECORD_OBJ       = "RECORD"
	FUNCTION_OBJ     = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	PARTIAL_APP_OBJ  = "PARTIAL_APPLICATION"
	DEFERRED_OBJ     = "DEFERRED"
	LABEL_OBJ        = "LABEL"
	FOREIGN_OBJ      = "FOREIGN"
	ERROR_OBJ        = "ERROR"
)

// Object is the closed set of runtime values. Every consumer (merge,
// contract application, serialization) switches exhaustively over the
// concrete types behind it.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
