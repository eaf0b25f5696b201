package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Gacha     GachaConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	MaxLimit     int
	DefaultLimit int
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

// GachaConfigs holds the business rules of the draw engine that are not part
// of a banner row: the bulk-draw guarantee and the duplicate-to-currency
// conversion.
type GachaConfigs struct {
	// GuaranteeBatchSize is the requested draw count that activates the
	// minimum-rarity guarantee. Zero disables the guarantee entirely.
	GuaranteeBatchSize int

	// GuaranteeMinTier is the lowest tier that satisfies the guarantee.
	GuaranteeMinTier string

	// GuaranteeHighTierShare is the percentage weight given to the highest
	// qualifying tier when the replacement band holds more than one. The
	// remaining share is split among the lower ones by entry weight.
	GuaranteeHighTierShare int

	// DuplicateConversionRate scales the tier reward multiplier times the
	// cost per draw into the currency reward of a duplicate. The result is
	// always floored.
	DuplicateConversionRate float64
}
