// internal/types/types.go
package types

// EntityID — стабильный идентификатор сущности. ID выдаются монотонно и
// никогда не переиспользуются, поэтому ссылка на удалённую сущность
// просто перестаёт разрешаться.
type EntityID uint32

// NoEntity is the zero handle; it never refers to a live entity.
const NoEntity EntityID = 0
