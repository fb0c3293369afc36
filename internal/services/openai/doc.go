// Package openai implements the two service calls the pipeline makes:
// vision captioning of an image and text-only tag derivation from an
// existing caption. Responses are decoded tolerantly since models sometimes
// wrap their JSON in prose or code fences.
package openai
