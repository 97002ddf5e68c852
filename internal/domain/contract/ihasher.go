package contract

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

type IUUIDGenerator interface {
	NewUUID() string
}
