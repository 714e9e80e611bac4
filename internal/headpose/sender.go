package headpose

import (
	"fmt"
	"net"

	"github.com/relabs-tech/headpose_relay/internal/orientation"
)

// Sender writes poses to a receiver, one datagram per pose.
type Sender struct {
	conn net.Conn
}

// NewSender dials the receiver address. UDP dialing does not contact the
// peer, so an absent listener only shows up as lost datagrams.
func NewSender(addr string) (*Sender, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Sender{conn: conn}, nil
}

// Send writes one pose datagram.
func (s *Sender) Send(p orientation.Pose) error {
	if _, err := s.conn.Write(Encode(p)); err != nil {
		return fmt.Errorf("send pose: %w", err)
	}
	return nil
}

func (s *Sender) Close() error {
	return s.conn.Close()
}
