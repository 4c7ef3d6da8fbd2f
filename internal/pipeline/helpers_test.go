package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/codeforge/internal/llm"
)

// fakeClient is an in-memory llm.Client double. It records every request
// and answers from a per-task response table.
type fakeClient struct {
	responses map[llm.TaskType]string
	errs      map[llm.TaskType]error
	panicOn   llm.TaskType
	calls     []llm.CompletionRequest
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		responses: map[llm.TaskType]string{},
		errs:      map[llm.TaskType]error{},
	}
}

func (f *fakeClient) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls = append(f.calls, req)
	if f.panicOn != "" && req.Task == f.panicOn {
		panic("fake client panic")
	}
	if err, ok := f.errs[req.Task]; ok {
		return nil, err
	}
	return &llm.CompletionResponse{
		Text:  llm.StripCodeFence(f.responses[req.Task]),
		Model: "fake-model",
	}, nil
}

func (f *fakeClient) Available(context.Context) bool { return true }

func (f *fakeClient) callsFor(task llm.TaskType) []llm.CompletionRequest {
	var out []llm.CompletionRequest
	for _, c := range f.calls {
		if c.Task == task {
			out = append(out, c)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
