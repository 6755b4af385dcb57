// Package triton adapts the generated Triton gRPC inference client to the
// few calls this tool needs: connecting, a single-input blocking inference
// and the per-model statistics query.
package triton

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/sunhailin-Leo/triton-service-go/v2/nvidia_inferenceserver"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Datatype tags understood by the server for this tool's tensors.
const (
	DatatypeUint8 = "UINT8"
	DatatypeFP32  = "FP32"
)

// ErrStatisticsCount reports a statistics response that does not describe
// exactly one model.
var ErrStatisticsCount = errors.New("inference statistics: expected exactly one model entry")

// Input describes the single input tensor of an inference request. Raw
// holds the tensor payload in the server's little-endian raw layout.
type Input struct {
	Name     string
	Datatype string
	Shape    []int64
	Raw      []byte
}

// Scores is the decoded output tensor of an inference response.
type Scores struct {
	Data  []float32
	Shape []int64
}

// Client wraps a GRPCInferenceService channel. All calls block until the
// server answers or the transport fails; there is no retrying.
type Client struct {
	conn    *grpc.ClientConn
	service nvidia_inferenceserver.GRPCInferenceServiceClient
	verbose bool
}

// Connect dials the server and performs a liveness round trip, so an
// unreachable or not yet live endpoint fails here rather than at the first
// inference.
func Connect(ctx context.Context, url string, verbose bool) (*Client, error) {
	conn, err := grpc.Dial(url, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{
		conn:    conn,
		service: nvidia_inferenceserver.NewGRPCInferenceServiceClient(conn),
		verbose: verbose,
	}

	live, err := c.service.ServerLive(ctx, &nvidia_inferenceserver.ServerLiveRequest{})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("server liveness check at %s: %w", url, err)
	}
	if !live.GetLive() {
		conn.Close()
		return nil, fmt.Errorf("server at %s is not live", url)
	}
	if verbose {
		meta, err := c.service.ServerMetadata(ctx, &nvidia_inferenceserver.ServerMetadataRequest{})
		if err != nil {
			log.Debugf("server metadata unavailable: %v", err)
		} else {
			log.Debugf("connected to %s (%s %s)", url, meta.GetName(), meta.GetVersion())
		}
	}
	return c, nil
}

// Infer sends one batch as a single-input request and blocks until the
// response arrives, returning the scores of the requested output tensor.
func (c *Client) Infer(ctx context.Context, model string, input Input, outputName string) (Scores, error) {
	req := &nvidia_inferenceserver.ModelInferRequest{
		ModelName: model,
		Inputs: []*nvidia_inferenceserver.ModelInferRequest_InferInputTensor{{
			Name:     input.Name,
			Datatype: input.Datatype,
			Shape:    input.Shape,
		}},
		Outputs: []*nvidia_inferenceserver.ModelInferRequest_InferRequestedOutputTensor{{
			Name: outputName,
		}},
		RawInputContents: [][]byte{input.Raw},
	}
	if c.verbose {
		log.Debugf("infer %s: input %s %v %s, %d raw bytes",
			model, input.Name, input.Shape, input.Datatype, len(input.Raw))
	}

	resp, err := c.service.ModelInfer(ctx, req)
	if err != nil {
		return Scores{}, fmt.Errorf("infer %s: %w", model, err)
	}
	return decodeScores(resp, outputName)
}

// ModelStatistics fetches aggregate statistics for the model and asserts
// that the server reports exactly one entry for it. Any other count wraps
// ErrStatisticsCount.
func (c *Client) ModelStatistics(ctx context.Context, model string) (*nvidia_inferenceserver.ModelStatisticsResponse, error) {
	resp, err := c.service.ModelStatistics(ctx, &nvidia_inferenceserver.ModelStatisticsRequest{Name: model})
	if err != nil {
		return nil, fmt.Errorf("model statistics for %s: %w", model, err)
	}
	if n := len(resp.GetModelStats()); n != 1 {
		return nil, fmt.Errorf("%w, got %d", ErrStatisticsCount, n)
	}
	return resp, nil
}

// Close tears down the underlying channel.
func (c *Client) Close() error {
	return c.conn.Close()
}

func decodeScores(resp *nvidia_inferenceserver.ModelInferResponse, name string) (Scores, error) {
	for i, out := range resp.GetOutputs() {
		if out.GetName() != name {
			continue
		}
		// Triton answers with either raw little-endian buffers or typed
		// contents, never both for the same tensor.
		if raw := resp.GetRawOutputContents(); i < len(raw) {
			data, err := float32sFromBytes(raw[i])
			if err != nil {
				return Scores{}, fmt.Errorf("output %s: %w", name, err)
			}
			return Scores{Data: data, Shape: out.GetShape()}, nil
		}
		if contents := out.GetContents(); contents != nil {
			return Scores{Data: contents.GetFp32Contents(), Shape: out.GetShape()}, nil
		}
		return Scores{}, fmt.Errorf("output %s carries no contents", name)
	}
	return Scores{}, fmt.Errorf("response has no output named %s", name)
}

// Float32Bytes lays out a float32 slice in the little-endian raw tensor
// representation the server expects.
func Float32Bytes(data []float32) []byte {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

func float32sFromBytes(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("raw FP32 tensor has %d bytes, not a multiple of 4", len(raw))
	}
	data := make([]float32, len(raw)/4)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return data, nil
}
