package content

import "github.com/google/wire"

var Set = wire.NewSet(NewRepository, NewHistoryService, NewHandler)
