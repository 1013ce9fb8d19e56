package history

import (
	"context"

	"github.com/matzehuels/thrackle/pkg/errors"
)

// Backend names accepted by [OpenStore].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMongo  = "mongo"
)

// StoreConfig selects and configures a snapshot backend.
type StoreConfig struct {
	Backend string
	Dir     string // FileStore directory
	Mongo   MongoConfig
}

// OpenStore creates the configured store. An empty backend means file.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.Dir)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"unknown history backend %q (want memory, file or mongo)", cfg.Backend)
}
