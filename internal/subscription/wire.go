package subscription

import "github.com/google/wire"

var Set = wire.NewSet(NewRepository, NewService, NewAggregator, NewHandler)
