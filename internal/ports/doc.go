// Package ports defines the interfaces (ports) that connect the application
// layer to the platform collaborators.
//
// The bridge core never talks to the radio, the IR emitter or the terminal
// directly. It depends only on these interfaces, and infrastructure adapters
// (internal/adapters) implement them.
//
// # Port Interfaces
//
//   - [Link]: wireless serial link delivering [LinkEvent]s
//   - [LinkProbe]: checks that the link subsystem can be activated
//   - [RawTransmitter]: carrier-modulated raw IR transmit primitive
//   - [DeviceWatcher]: reports transmitter device presence changes
//   - [Display]: single full-screen popup slot plus the blocking dispatch loop
//   - [DispatchHandler]: receives navigation and custom events from the loop
//   - [Logger]: structured logging abstraction
//
// Implementations of Link and DeviceWatcher invoke callbacks from their own
// goroutines; callers must treat those callbacks as a separate execution context.
package ports
