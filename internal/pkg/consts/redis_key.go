package consts

const (
	TokenBlacklistKey = "auth:token:revoked:"
	AlbumSearchKey    = "music:album:search:"
)

const (
	AlbumSearchTTLMinutes = 30
)
