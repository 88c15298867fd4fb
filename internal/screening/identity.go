package screening

import "strings"

// DeriveEntityID produces the stable idempotency key for an entity from its
// type and name: both lower-cased, spaces in the name replaced with
// underscores, joined with a colon. Intentionally non-cryptographic and
// collision-prone; the engine treats the result as an opaque idempotency key,
// not a security boundary. When the resolution collaborator supplies a
// canonical ID, that ID wins over this derivation.
//
// TODO: hash normalized identity attributes (name, type, date of birth,
// country) once the resolution service exposes them, to reduce collisions.
func DeriveEntityID(entityType, name string) string {
	return strings.ToLower(entityType) + ":" +
		strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
