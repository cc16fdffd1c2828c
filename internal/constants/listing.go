package constants

const (
	// DefaultListingURL - адрес API со списком объектов аренды
	DefaultListingURL = "https://xulifestyle.com/api/auth/property/"

	// ItemsPerPage - размер страницы на стороне API (используется для расчета totalPages)
	ItemsPerPage = 10

	// MaxVisiblePages - сколько кнопок страниц показываем одновременно
	MaxVisiblePages = 5

	// InitialPage - страница, с которой монтируется экран
	InitialPage = 1

	// DefaultImagePath - путь, по которому HTTP-хост отдает встроенную картинку
	DefaultImagePath = "/assets/default-room.png"

	// DefaultMaxScreens - предел экранов в реестре по умолчанию
	DefaultMaxScreens = 1000
)
