// Package commands builds robot command payloads and sends them through a
// run-scoped dispatcher.
//
// Every builder validates its inputs, assembles the parameter object the
// robot API expects for one action, and hands it to Dispatcher.withRunContext,
// which resolves the target run, stamps a correlation id, enqueues the command
// with the setup intent, and journals the outcome. Invalid input is rejected
// with services.ErrValidation before anything reaches the network. Errors
// returned by the robot are passed through unchanged.
//
// TransferToLoc and TransferFromLoc sequence the primitive builders to move
// liquid between a well and an arbitrary deck coordinate. A failure part way
// through a transfer stops the sequence; nothing is rolled back.
package commands
