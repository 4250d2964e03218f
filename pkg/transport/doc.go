// Package transport streams plotter documents to a device over a serial line.
//
// Plotters buffer only a few dozen bytes of input. The [Sender] therefore
// groups whole instructions into chunks that fit the device buffer ([Chunk])
// and waits for the device between chunks: after each chunk it sends an
// output-actual-position request ("OA;") and blocks until the device answers
// with a carriage return, then discards the rest of the answer.
//
//	port, err := transport.OpenPort(ctx, transport.PortConfig{Device: dev})
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//	s := transport.Sender{Port: port, ChunkSize: 60}
//	stats, err := s.Send(ctx, text)
//
// [OpenPort] uses go.bug.st/serial; [DetectDevice] finds the single USB
// serial adapter when no device is given.
package transport
