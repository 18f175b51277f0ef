package email

import (
	"github.com/google/wire"

	"vidtube/internal/otp"
)

var Set = wire.NewSet(NewSender, wire.Bind(new(otp.Sender), new(*Sender)))
