package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	storage := &S3Storage{bucket: "vitrine-media"}

	cases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "virtual-hosted style",
			url:  "https://vitrine-media.s3.amazonaws.com/stories/1.jpg",
			want: "stories/1.jpg",
		}, {
			name: "path style",
			url:  "https://s3.amazonaws.com/vitrine-media/stories/1.jpg",
			want: "stories/1.jpg",
		}, {
			name:    "no key",
			url:     "https://vitrine-media.s3.amazonaws.com/",
			wantErr: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			key, err := storage.objectKey(c.url)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.want, key)
		})
	}
}
