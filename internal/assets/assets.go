package assets

import (
	_ "embed"
)

// DefaultRoomImageName - имя встроенной картинки для объектов без фото
const DefaultRoomImageName = "default-room.png"

//go:embed default-room.png
var defaultRoomImage []byte

// DefaultRoomImage возвращает байты встроенной картинки.
func DefaultRoomImage() []byte {
	return defaultRoomImage
}
