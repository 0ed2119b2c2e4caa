// Package ui connects the widget loop to a real terminal through a Bubble Tea
// program. Bubble Tea owns the terminal: raw mode, the alternate screen,
// mouse reporting and output diffing. It does not own any widget state.
//
// Message flow:
//   - The program runs on its own goroutine. Key, mouse and window size
//     messages are routed through a typed handler registry and forwarded to
//     the loop as input events over a buffered channel.
//   - The loop renders its widget tree and hands each changed frame back with
//     Screen.Draw, which the model stores and returns from View.
//   - Screen.Stop asks the program to quit and waits for the terminal to be
//     restored. The event channel is closed once the program has exited, which
//     the loop treats as a request to quit.
package ui
