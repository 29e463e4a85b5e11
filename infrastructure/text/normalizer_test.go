package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text lowercased",
			input: "Hello World",
			want:  "hello world",
		},
		{
			name:  "vietnamese diacritics survive",
			input: "Sản phẩm RẤT TỐT",
			want:  "sản phẩm rất tốt",
		},
		{
			name:  "url removed",
			input: "xem tại https://shop.example.com/sale nhé",
			want:  "xem tại nhé",
		},
		{
			name:  "www link removed",
			input: "ghé www.shop.vn ngay",
			want:  "ghé ngay",
		},
		{
			name:  "bare domain removed",
			input: "mua ở shopee.vn giá rẻ",
			want:  "mua ở giá rẻ",
		},
		{
			name:  "phone number removed",
			input: "gọi 0901234567 để đặt hàng",
			want:  "gọi để đặt hàng",
		},
		{
			name:  "international phone removed",
			input: "hotline +84901234567 luôn mở",
			want:  "hotline luôn mở",
		},
		{
			name:  "mention removed",
			input: "cảm ơn @shop_official nhiều",
			want:  "cảm ơn nhiều",
		},
		{
			name:  "hashtag removed",
			input: "giảm giá #sale",
			want:  "giảm giá",
		},
		{
			name:  "emoji removed",
			input: "tuyệt vời 😍🎉",
			want:  "tuyệt vời",
		},
		{
			name:  "punctuation removed and whitespace collapsed",
			input: "  tốt!!!   quá,   mua  liền  ",
			want:  "tốt quá mua liền",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only noise",
			input: "😍 https://spam.io/x @bot!!!",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Sản phẩm RẤT TỐT! 😍 gọi 0901234567 hoặc xem https://shop.vn/abc @người_bán",
		"GIAO HÀNG NHANH, đóng gói đẹp",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean must be idempotent for %q", in)
	}
}

func TestKeywords(t *testing.T) {
	t.Run("short words and stopwords excluded", func(t *testing.T) {
		// "rất" and "hoặc" are stopwords; "tốt" and "hệ" are too short.
		got := Keywords("sản phẩm rất tốt liên hệ hoặc")
		assert.Equal(t, []string{"phẩm", "liên"}, got)
	})

	t.Run("frequency ranking with first-seen tiebreak", func(t *testing.T) {
		got := Keywords("giao hàng nhanh giao hàng đúng")
		assert.Equal(t, []string{"giao", "hàng", "nhanh", "đúng"}, got)
	})

	t.Run("capped at five", func(t *testing.T) {
		got := Keywords("alpha bravo charlie delta echo foxtrot golf")
		assert.Len(t, got, 5)
		assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Keywords(""))
	})
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "vi", DetectLanguage("xin chào bạn"))
	assert.Equal(t, "vi", DetectLanguage("CHẤT LƯỢNG"))
	assert.Equal(t, "en", DetectLanguage("hello world"))
	assert.Equal(t, "en", DetectLanguage("xin chao ban")) // no diacritics
	assert.Equal(t, "en", DetectLanguage(""))
}

func TestDescribe(t *testing.T) {
	meta := Describe("Giá bao nhiêu? 😊 xem https://shop.vn @admin")

	assert.True(t, meta.HasEmoji)
	assert.True(t, meta.HasLink)
	assert.True(t, meta.HasTag)
	assert.Equal(t, "vi", meta.Language)
	assert.Equal(t, 7, meta.WordCount)
	assert.Equal(t, len([]rune("Giá bao nhiêu? 😊 xem https://shop.vn @admin")), meta.Length)
}

func TestHasTag(t *testing.T) {
	assert.True(t, HasTag("cảm ơn @shop nhiều"))
	assert.True(t, HasTag("ưu đãi #sale"))
	assert.False(t, HasTag("không có tag nào"))
}

func TestHasPhone(t *testing.T) {
	assert.True(t, HasPhone("call 0901234567"))
	assert.True(t, HasPhone("sdt +84901234567"))
	assert.True(t, HasPhone("1234567890")) // ten bare digits
	assert.False(t, HasPhone("call 12345"))
	assert.False(t, HasPhone("no numbers here"))
}
