package ports

import "github.com/lao-sha/fissionmall/internal/core/domain/model/kernel"

// Clock supplies the logical time stamped on records. Readings never decrease.
type Clock interface {
	Now() kernel.Timestamp
}
