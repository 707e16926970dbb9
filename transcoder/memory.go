package transcoder

import (
	nativeapi "github.com/wippyai/nativeapi-go"
	"github.com/wippyai/nativeapi-go/memory"
)

type Memory = nativeapi.Memory
type Gateway = memory.Gateway
