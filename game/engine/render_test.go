package engine

import "testing"

func TestRenderBoard_Empty(t *testing.T) {
	board := NewBoard(3, 3)
	seats := []Seat{{Name: "a", Symbol: "*"}, {Name: "b", Symbol: "o"}}

	want := "+-+-+-+\n" +
		"| | | |\n" +
		"| | | |\n" +
		"| | | |\n" +
		"+-+-+-+"

	if got := RenderBoard(&board, seats); got != want {
		t.Errorf("Unexpected render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderBoard_WithTiles(t *testing.T) {
	board := buildBoard([]string{
		"1.2",
		".1.",
		"2.1",
	})
	seats := []Seat{{Name: "a", Symbol: "*"}, {Name: "b", Symbol: "o"}}

	want := "+-+-+-+\n" +
		"|*| |o|\n" +
		"| |*| |\n" +
		"|o| |*|\n" +
		"+-+-+-+"

	if got := RenderBoard(&board, seats); got != want {
		t.Errorf("Unexpected render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderBoard_Rectangular(t *testing.T) {
	board := buildBoard([]string{
		"12.2",
		"..1.",
	})
	seats := []Seat{{Name: "a", Symbol: "x"}, {Name: "b", Symbol: "+"}}

	want := "+-+-+-+-+\n" +
		"|x|+| |+|\n" +
		"| | |x| |\n" +
		"+-+-+-+-+"

	if got := RenderBoard(&board, seats); got != want {
		t.Errorf("Unexpected render:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderBoard_UnknownOwnerFallsBackToWhitespace(t *testing.T) {
	board := buildBoard([]string{"13", ".."})
	seats := []Seat{{Name: "a", Symbol: "*"}, {Name: "b", Symbol: "o"}}

	want := "+-+-+\n" +
		"|*| |\n" +
		"| | |\n" +
		"+-+-+"

	if got := RenderBoard(&board, seats); got != want {
		t.Errorf("Unexpected render:\n%s\nwant:\n%s", got, want)
	}
}

func TestEngineRender(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	placeAll(t, engine, []Position{{Row: 0, Col: 0}, {Row: 1, Col: 1}})

	want := "+-+-+-+\n" +
		"|*| | |\n" +
		"| |o| |\n" +
		"| | | |\n" +
		"+-+-+-+"

	if got := engine.Render(); got != want {
		t.Errorf("Unexpected render:\n%s\nwant:\n%s", got, want)
	}
}
