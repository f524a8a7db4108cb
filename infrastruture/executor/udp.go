package executor

import (
	"context"
	"log"
	"net"
	"sync"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/nav"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// UDP sends each twist to a vehicle bridge as a protobuf Struct datagram
// with the fields kind, linear, angular and duration_ms.
type UDP struct {
	conn   *net.UDPConn
	logger *log.Logger
	sync.Mutex
}

// DialUDP creates a UDP executor sending to addr.
func DialUDP(addr string, logger *log.Logger) (*UDP, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	return &UDP{conn: conn, logger: logger}, nil
}

// Execute sends the command's twist, waits its duration and sends a zero
// stop twist. The stop is sent even when ctx ends early.
func (u *UDP) Execute(ctx context.Context, cmd nav.MotionCommand) error {
	linear, angular := nav.Twist(cmd)
	if err := u.send(cmd.Kind, linear, angular, cmd.Duration.Milliseconds()); err != nil {
		return err
	}

	waitErr := hold(ctx, cmd.Duration)
	if err := u.send(nav.Stop, 0, 0, 0); err != nil {
		return err
	}
	return waitErr
}

// Close releases the socket.
func (u *UDP) Close() error {
	return u.conn.Close()
}

func (u *UDP) send(kind nav.Kind, linear, angular float64, durationMs int64) error {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"kind":        kind.String(),
		"linear":      linear,
		"angular":     angular,
		"duration_ms": durationMs,
	})
	if err != nil {
		return err
	}
	payload, err := proto.Marshal(msg)
	if err != nil {
		return err
	}

	u.Lock()
	defer u.Unlock()
	if _, err := u.conn.Write(payload); err != nil {
		u.logger.Printf("%s[ERROR]%s sending twist: %s", config.LogErrorColor, config.LogColorReset, err)
		return err
	}
	return nil
}
