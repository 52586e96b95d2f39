package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var clientFlags = []string{"-d", "-k", "-a", "-t", "-E", "-i"}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "client flags kept, server flags dropped",
			args:    []string{"-d", "cache.db", "-m", ":9090", "-k", "grpc"},
			allowed: clientFlags,
			want:    []string{"-d", "cache.db", "-k", "grpc"},
		},
		{
			name:    "equals form",
			args:    []string{"-a=127.0.0.1:50051", "-s=secret"},
			allowed: clientFlags,
			want:    []string{"-a=127.0.0.1:50051"},
		},
		{
			name:    "boolean followed by a flag",
			args:    []string{"-E", "-d", "x.db"},
			allowed: clientFlags,
			want:    []string{"-E", "-d", "x.db"},
		},
		{
			name:    "boolean last",
			args:    []string{"-d", "x.db", "-E"},
			allowed: clientFlags,
			want:    []string{"-d", "x.db", "-E"},
		},
		{
			name:    "dash-leading value is not consumed",
			args:    []string{"-i", "-5"},
			allowed: clientFlags,
			want:    []string{"-i"},
		},
		{
			name:    "positionals and unknowns",
			args:    []string{"journal", "-x", "1", "--y=2"},
			allowed: clientFlags,
			want:    []string{},
		},
		{
			name:    "repeats keep order",
			args:    []string{"-t", "one", "-t", "two"},
			allowed: clientFlags,
			want:    []string{"-t", "one", "-t", "two"},
		},
		{
			name:    "nil args",
			allowed: clientFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "lifedash.json"}, "lifedash.json"},
		{"long", []string{"-d", "x.db", "-config", "/etc/lifedash.json"}, "/etc/lifedash.json"},
		{"double dash equals", []string{"--config=/tmp/server.json", "-a", ":50051"}, "/tmp/server.json"},
		{"last wins", []string{"-c", "a.json", "-config", "b.json"}, "b.json"},
		{"absent", []string{"-d", "x.db", "-E"}, ""},
		{"missing value", []string{"-c"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JsonConfigFlags(tt.args))
		})
	}
}
