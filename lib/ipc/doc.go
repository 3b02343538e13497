// Package ipc provides the channel plumbing shared by the delay
// queue and the scheduler.
package ipc
