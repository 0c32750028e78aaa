package models_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/followscope/followscope/internal/models"
)

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestParseUsernames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "commas", in: "balajis,dwr,v", want: []string{"balajis", "dwr", "v"}},
		{name: "mixed separators", in: " balajis ,  dwr\tv\n", want: []string{"balajis", "dwr", "v"}},
		{name: "duplicates and case", in: "DWR, dwr, Dwr", want: []string{"dwr"}},
		{name: "empty", in: " , ,", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := models.ParseUsernames(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseUsernames(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestGraphDataRequest_Seeds(t *testing.T) {
	tests := []struct {
		name    string
		req     models.GraphDataRequest
		max     int
		wantErr error
		wantLen int
	}{
		{name: "valid", req: models.GraphDataRequest{Usernames: "a, b"}, max: 5, wantLen: 2},
		{name: "empty", req: models.GraphDataRequest{Usernames: "  "}, max: 5, wantErr: models.ErrNoUsernames},
		{name: "too many", req: models.GraphDataRequest{Usernames: "a b c"}, max: 2, wantErr: models.ErrTooManyUsernames},
		{name: "no cap", req: models.GraphDataRequest{Usernames: "a b c"}, max: 0, wantLen: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seeds, err := tc.req.Seeds(tc.max)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			assertNoError(t, err)
			if len(seeds) != tc.wantLen {
				t.Errorf("got %d seeds, want %d", len(seeds), tc.wantLen)
			}
		})
	}
}

func TestGraphDataRequest_SeedTooLong(t *testing.T) {
	req := models.GraphDataRequest{Usernames: strings.Repeat("x", models.MaxUsernameLength+1)}
	if _, err := req.Seeds(10); err == nil || !strings.Contains(err.Error(), "exceeds maximum length") {
		t.Fatalf("expected length error, got %v", err)
	}
}

func TestEndpoint_UnmarshalForms(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    models.NodeID
		hasNode bool
	}{
		{name: "string id", in: `"42"`, want: "42"},
		{name: "numeric id", in: `42`, want: "42"},
		{name: "resolved object", in: `{"id":"42","username":"alice"}`, want: "42", hasNode: true},
		{name: "resolved object numeric id", in: `{"id":42}`, want: "42", hasNode: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e models.Endpoint
			assertNoError(t, json.Unmarshal([]byte(tc.in), &e))
			if e.ID() != tc.want {
				t.Errorf("ID() = %q, want %q", e.ID(), tc.want)
			}
			if (e.Node() != nil) != tc.hasNode {
				t.Errorf("Node() presence = %v, want %v", e.Node() != nil, tc.hasNode)
			}
		})
	}
}

func TestEndpoint_RejectsBadID(t *testing.T) {
	var e models.Endpoint
	if err := json.Unmarshal([]byte(`true`), &e); err == nil {
		t.Fatal("expected error for boolean id")
	}

	if err := json.Unmarshal([]byte(`{"username":"x"}`), &e); !errors.Is(err, models.ErrMissingEndpoint) {
		t.Fatalf("expected ErrMissingEndpoint, got %v", err)
	}
}

func TestLink_MarshalEmitsBareIDs(t *testing.T) {
	l := models.Link{
		Source:    models.Resolved(&models.Node{ID: "1", Username: "a"}),
		Target:    models.Ref("2"),
		Timestamp: 7,
	}

	data, err := json.Marshal(l)
	assertNoError(t, err)

	want := `{"source":"1","target":"2","timestamp":7}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestLink_Validate(t *testing.T) {
	assertNoError(t, (&models.Link{Source: models.Ref("a"), Target: models.Ref("b")}).Validate())

	err := (&models.Link{Target: models.Ref("b")}).Validate()
	if !errors.Is(err, models.ErrMissingEndpoint) {
		t.Fatalf("expected ErrMissingEndpoint, got %v", err)
	}
}

func TestPinRequest_Validate(t *testing.T) {
	x, y := 1.0, 2.0
	assertNoError(t, (&models.PinRequest{X: &x, Y: &y}).Validate())

	if err := (&models.PinRequest{X: &x}).Validate(); !errors.Is(err, models.ErrMissingCoordinates) {
		t.Fatalf("expected ErrMissingCoordinates, got %v", err)
	}
}
