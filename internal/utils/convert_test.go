package utils

import "testing"

func TestStringToInt(t *testing.T) {
	cases := map[string]int{
		"42":  42,
		"0":   0,
		"-3":  -3,
		"abc": 0, // 非法输入退回0
		"":    0,
	}
	for in, want := range cases {
		if got := StringToInt(in); got != want {
			t.Errorf("StringToInt(%q) = %d, 期望 %d", in, got, want)
		}
	}
}

func TestConvertFloat64ToFloat32Embeddings(t *testing.T) {
	in := [][]float64{{0.5, 1.25}, {-2.0}}
	out := ConvertFloat64ToFloat32Embeddings(in)

	if len(out) != 2 || len(out[0]) != 2 || len(out[1]) != 1 {
		t.Fatalf("维度不一致: %v", out)
	}
	if out[0][0] != 0.5 || out[0][1] != 1.25 || out[1][0] != -2.0 {
		t.Fatalf("数值转换错误: %v", out)
	}
}
