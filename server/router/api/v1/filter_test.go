package v1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractNameFromFilter(t *testing.T) {
	tests := []struct {
		filter  string
		want    string
		wantErr bool
	}{
		{"name == 'John'", "John", false},
		{"'John' == name", "John", false},
		{`name == "Mary Jane"`, "Mary Jane", false},
		{"", "", false},
		{"   ", "", false},
		{"name != 'John'", "", true},
		{"age == 3", "", true},
		{"name", "", true},
		{"name == ''", "", true},
		{"garbage ===", "", true},
	}
	for _, test := range tests {
		got, err := extractNameFromFilter(test.filter)
		if test.wantErr {
			require.Error(t, err, "filter %q", test.filter)
			continue
		}
		require.NoError(t, err, "filter %q", test.filter)
		require.Equal(t, test.want, got, "filter %q", test.filter)
	}
}
