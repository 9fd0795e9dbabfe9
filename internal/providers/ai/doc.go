/*
Package ai is the client for the assistant chat and image generation
services used by the Assistant and Image Studio apps.

Both endpoints follow the OpenAI-compatible REST shape. Each kind of call
has its own circuit breaker; a shared token bucket keeps the device from
flooding the backend. Calls are made exactly once.
*/
package ai
