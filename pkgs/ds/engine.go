package ds

import (
	"errors"
	"net"
	"strconv"
	"time"
)

const (
	udpControlPort  = 1110
	udpStatusPort   = 1150
	tcpPort         = 1740
	simulatorPort   = 1135
	simulatorLoopIP = "127.0.0.1"

	sendCadence        = 20 * time.Millisecond
	recvLivenessWindow = 2 * time.Second
	simulatorProbe     = 250 * time.Millisecond
	backoffCeiling     = 5 * time.Second
)

// engine owns the three long-lived tasks described by the connection
// design: a fixed-cadence UDP sender, a UDP receiver that supervises a TCP
// session, and a loopback simulator detector. Tasks never touch each
// other's sockets; they communicate only through the shared send/recv/tcp
// states and a pair of signal channels.
type engine struct {
	logger Logger

	send *sendState
	recv *recvState
	tcp  *tcpState

	facadeSignals chan Signal // Station -> recv task
	sendSignals   chan Signal // recv task -> send task

	initialTarget string
	initialDSMode DsMode

	done chan struct{}
}

func newEngine(target string, alliance Alliance, dsMode DsMode, logger Logger) *engine {
	if logger == nil {
		logger = nopLogger{}
	}
	return &engine{
		logger:        logger,
		send:          newSendState(alliance),
		recv:          &recvState{},
		tcp:           &tcpState{},
		facadeSignals: make(chan Signal, 32),
		sendSignals:   make(chan Signal, 32),
		initialTarget: target,
		initialDSMode: dsMode,
		done:          make(chan struct{}),
	}
}

// start launches the send, recv, and simulator-detector tasks. It returns
// immediately; tasks run until a Disconnect signal reaches the recv task.
func (e *engine) start() {
	go e.runSendTask()
	go e.runRecvTask()
	go e.runSimulatorDetector()
}

// signal posts a reconfiguration event to the recv task, which owns
// forwarding it onward to the send task where relevant.
func (e *engine) signal(s Signal) {
	select {
	case e.facadeSignals <- s:
	case <-e.done:
	}
}

func dialControlUDP(ip string) (*net.UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(ip, strconv.Itoa(udpControlPort)))
	if err != nil {
		return nil, err
	}
	return net.DialUDP("udp", nil, raddr)
}

// runSendTask implements the 20 ms outbound cadence.
func (e *engine) runSendTask() {
	target := e.initialTarget
	if e.initialDSMode == DsModeSimulation {
		target = simulatorLoopIP
	}

	conn, err := dialControlUDP(target)
	if err != nil {
		e.logger.Errorf("ds: send task cannot bind control socket for %s: %v", target, err)
		return
	}
	defer conn.Close()

	backoff := NewExponentialBackoff(backoffCeiling)
	ticker := time.NewTicker(sendCadence)
	defer ticker.Stop()

	for {
		select {
		case sig, ok := <-e.sendSignals:
			if !ok {
				return
			}
			switch {
			case sig.IsDisconnect():
				return
			case sig.IsNewTarget():
				newConn, dialErr := dialControlUDP(sig.Target())
				if dialErr != nil {
					e.logger.Errorf("ds: send task cannot reconnect to %s: %v", sig.Target(), dialErr)
					continue
				}
				conn.Close()
				conn = newConn
				target = sig.Target()
				e.send.Reset()
				e.send.ResetSeqnum()
				e.recv.Reset()
				backoff.Reset()
			case sig.IsNewMode():
				e.send.SetDSMode(sig.DSMode())
				if sig.DSMode() != DsModeSimulation {
					continue
				}
				newConn, dialErr := dialControlUDP(simulatorLoopIP)
				if dialErr != nil {
					e.logger.Errorf("ds: send task cannot reconnect to simulator: %v", dialErr)
					continue
				}
				conn.Close()
				conn = newConn
				target = simulatorLoopIP
				e.send.Reset()
				e.send.ResetSeqnum()
				e.recv.Reset()
				backoff.Reset()
			}
		case <-ticker.C:
			packet, buildErr := e.send.Build()
			if buildErr != nil {
				e.logger.Errorf("ds: failed to build control packet: %v", buildErr)
				continue
			}

			_, result := Run(backoff, func() (int, error) { return conn.Write(packet) })
			if result != nil && result.FirstFailure && isConnRefused(result.Err) {
				e.logger.Warnf("ds: control socket to %s refused, marking telemetry stale", target)
				e.recv.Reset()
			}

			e.send.IncrementSeqnum()
		}
	}
}

// udpFrame is one result from the recv task's dedicated reader goroutine:
// either a datagram's payload or the error from a timed-out/closed read.
type udpFrame struct {
	data []byte
	err  error
}

// runRecvTask implements the UDP receive loop and TCP supervisor lifecycle.
func (e *engine) runRecvTask() {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: udpStatusPort})
	if err != nil {
		e.logger.Errorf("ds: recv task cannot bind status socket: %v", err)
		close(e.done)
		return
	}
	defer conn.Close()
	defer close(e.done)

	// conn is read exclusively by this goroutine; the select loop below never
	// touches it directly, so there is no concurrent access to the read buffer.
	frames := make(chan udpFrame)
	go func() {
		buf := make([]byte, 4096)
		for {
			_ = conn.SetReadDeadline(time.Now().Add(recvLivenessWindow))
			n, _, readErr := conn.ReadFromUDP(buf)
			if readErr != nil {
				frames <- udpFrame{err: readErr}
				if errors.Is(readErr, net.ErrClosed) {
					return
				}
				continue
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			frames <- udpFrame{data: data}
		}
	}()

	cachedMode := e.initialDSMode
	currentIP := e.initialTarget
	connected := false
	var tcpShutdown chan struct{}

	for {
		var frame udpFrame
		select {
		case sig := <-e.facadeSignals:
			switch {
			case sig.IsDisconnect():
				if tcpShutdown != nil {
					close(tcpShutdown)
				}
				e.forwardToSend(sig)
				return
			case sig.IsNewTarget():
				if tcpShutdown != nil {
					close(tcpShutdown)
					tcpShutdown = nil
				}
				currentIP = sig.Target()
				e.forwardToSend(sig)
			case sig.IsNewMode():
				if sig.DSMode() != cachedMode {
					if tcpShutdown != nil {
						close(tcpShutdown)
						tcpShutdown = nil
					}
					cachedMode = sig.DSMode()
					if cachedMode == DsModeNormal {
						e.forwardToSend(NewTargetSignal(currentIP))
					}
					e.forwardToSend(sig)
				}
			}
			continue
		case frame = <-frames:
		}

		if frame.err != nil {
			if connected {
				connected = false
				e.recv.Reset()
			}
			continue
		}

		connected = true
		pkt, decodeErr := DecodeUDPResponse(frame.data)
		if decodeErr != nil {
			e.logger.Warnf("ds: failed to decode status packet: %v", decodeErr)
			continue
		}

		if pkt.NeedDate {
			e.send.QueueUDP(currentDateTimeTag())
		}

		if tcpShutdown == nil {
			tcpTarget := currentIP
			if cachedMode == DsModeSimulation {
				tcpTarget = simulatorLoopIP
			}
			tcpShutdown = make(chan struct{})
			go e.runTCPSupervisor(tcpTarget, tcpShutdown)
		}

		if pkt.Status.EmergencyStopped() && !e.send.Estopped() {
			e.send.Estop()
		}

		e.recv.SetTrace(pkt.Trace)
		e.recv.SetBattery(pkt.Battery)
	}
}

func (e *engine) forwardToSend(s Signal) {
	select {
	case e.sendSignals <- s:
	default:
	}
}

// runTCPSupervisor owns one TCP connection's lifetime: reading inbound
// frames, writing queued outbound tags, and tearing down on shutdown.
func (e *engine) runTCPSupervisor(ip string, shutdown chan struct{}) {
	raddr := net.JoinHostPort(ip, strconv.Itoa(tcpPort))
	conn, err := net.Dial("tcp", raddr)
	if err != nil {
		e.logger.Warnf("ds: tcp supervisor could not connect to %s: %v", raddr, err)
		return
	}
	defer conn.Close()

	tagTx := make(chan TCPTag, 16)
	e.tcp.SetTagTx(tagTx)

	inbound := make(chan TCPPacket)
	inboundErr := make(chan error, 1)
	go func() {
		for {
			frame, readErr := ReadTCPFrame(conn)
			if readErr != nil {
				inboundErr <- readErr
				return
			}
			inbound <- frame
		}
	}()

	for {
		select {
		case <-shutdown:
			e.tcp.SetTagTx(nil)
			return
		case frame := <-inbound:
			if consumer := e.tcp.Consumer(); consumer != nil {
				consumer(frame)
			}
		case <-inboundErr:
			e.tcp.SetTagTx(nil)
			return
		case tag := <-tagTx:
			if writeErr := WriteTCPTag(conn, tag); writeErr != nil {
				e.logger.Warnf("ds: tcp supervisor write to %s failed: %v", raddr, writeErr)
			}
		}
	}
}

// runSimulatorDetector watches the loopback probe port and republishes
// DSMode transitions as NewMode signals.
func (e *engine) runSimulatorDetector() {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP(simulatorLoopIP), Port: simulatorPort})
	if err != nil {
		e.logger.Warnf("ds: simulator detector could not bind loopback probe port: %v", err)
		return
	}
	defer conn.Close()

	cached := e.initialDSMode
	buf := make([]byte, 1)

	for {
		select {
		case <-e.done:
			return
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(simulatorProbe))
		_, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if cached != DsModeNormal {
				cached = DsModeNormal
				e.signal(NewModeSignal(DsModeNormal))
			}
			continue
		}

		if cached != DsModeSimulation {
			cached = DsModeSimulation
			e.signal(NewModeSignal(DsModeSimulation))
		}
	}
}
