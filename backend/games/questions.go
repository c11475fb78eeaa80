// Package games holds the static mini-game question bank. The original
// content lives with the code rather than the database: questions change
// with releases, not at runtime.
package games

type Option struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Label    string `json:"label"`
}

type Question struct {
	ID       string   `json:"gameId"`
	Type     string   `json:"gameType"`
	Question string   `json:"question"`
	ImageURL string   `json:"imageUrl,omitempty"`
	AudioURL string   `json:"audioUrl,omitempty"`
	Answers  []string `json:"-"`
	Points   int      `json:"-"`
	Level    int      `json:"level"`
	Options  []Option `json:"options,omitempty"`
}

var questionBank = map[string][]Question{
	"guess-note": {
		{ID: "gn001", Question: "Nốt nhạc này là gì (tên đầy đủ)?", ImageURL: "/assets/images/games/note_do.png", Answers: []string{"đô", "do"}, Points: 10, Level: 1},
		{ID: "gn002", Question: "Nốt nhạc này là gì?", ImageURL: "/assets/images/games/note_re.png", Answers: []string{"rê", "re"}, Points: 10, Level: 1},
		{ID: "gn003", Question: "Đây là nốt nhạc gì?", ImageURL: "/assets/images/games/note_mi.png", Answers: []string{"mi"}, Points: 10, Level: 1},
		{ID: "gn004", Question: "Nốt nhạc này có tên là gì?", ImageURL: "/assets/images/games/note_fa.png", Answers: []string{"fa"}, Points: 10, Level: 1},
		{ID: "gn005", Question: "Đây là nốt nhạc nào?", ImageURL: "/assets/images/games/note_sol.png", Answers: []string{"son", "sol"}, Points: 10, Level: 1},
		{ID: "gn006", Question: "Nốt nhạc trong hình là gì?", ImageURL: "/assets/images/games/note_la.png", Answers: []string{"la"}, Points: 10, Level: 1},
		{ID: "gn007", Question: "Bạn có thể cho biết đây là nốt nhạc gì?", ImageURL: "/assets/images/games/note_si.png", Answers: []string{"si"}, Points: 10, Level: 1},
		{ID: "gn008", Question: "Nốt nhạc này được gọi là gì trong âm nhạc?", ImageURL: "/assets/images/games/note_do.png", Answers: []string{"đô", "do"}, Points: 10, Level: 1},
		{ID: "gn009", Question: "Hãy cho biết tên của nốt nhạc này?", ImageURL: "/assets/images/games/note_re.png", Answers: []string{"rê", "re"}, Points: 10, Level: 1},
		{ID: "gn010", Question: "Nốt nhạc này có tên gọi là gì?", ImageURL: "/assets/images/games/note_mi.png", Answers: []string{"mi"}, Points: 10, Level: 1},
	},
	"listen-note": {
		{ID: "ln001", Question: "Nghe âm thanh và đoán nốt nhạc này là gì?", AudioURL: "/assets/audio/notes/do.mp3", Answers: []string{"đô", "do"}, Points: 15, Level: 2},
		{ID: "ln002", Question: "Nghe âm thanh và cho biết đây là nốt nhạc nào?", AudioURL: "/assets/audio/notes/re.mp3", Answers: []string{"rê", "re"}, Points: 15, Level: 2},
		{ID: "ln003", Question: "Âm thanh này là nốt nhạc gì?", AudioURL: "/assets/audio/notes/mi.mp3", Answers: []string{"mi"}, Points: 15, Level: 2},
		{ID: "ln004", Question: "Hãy nghe và cho biết tên nốt nhạc:", AudioURL: "/assets/audio/notes/fa.mp3", Answers: []string{"fa"}, Points: 15, Level: 2},
		{ID: "ln005", Question: "Nốt nhạc trong âm thanh này là gì?", AudioURL: "/assets/audio/notes/sol.mp3", Answers: []string{"son", "sol"}, Points: 15, Level: 2},
		{ID: "ln006", Question: "Nghe kỹ và đoán tên nốt nhạc:", AudioURL: "/assets/audio/notes/la.mp3", Answers: []string{"la"}, Points: 15, Level: 2},
		{ID: "ln007", Question: "Âm thanh này tương ứng với nốt nhạc nào?", AudioURL: "/assets/audio/notes/si.mp3", Answers: []string{"si"}, Points: 15, Level: 2},
		{ID: "ln008", Question: "Đây là âm thanh của nốt nhạc gì?", AudioURL: "/assets/audio/notes/do.mp3", Answers: []string{"đô", "do"}, Points: 15, Level: 2},
		{ID: "ln009", Question: "Nghe và nhận biết nốt nhạc này:", AudioURL: "/assets/audio/notes/re.mp3", Answers: []string{"rê", "re"}, Points: 15, Level: 2},
		{ID: "ln010", Question: "Nốt nhạc phát ra trong âm thanh này là gì?", AudioURL: "/assets/audio/notes/mi.mp3", Answers: []string{"mi"}, Points: 15, Level: 2},
	},
	"match-note": {
		{ID: "mn001", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/do.mp3", Answers: []string{"đô", "do"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_do.png", Label: "Đô"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_re.png", Label: "Rê"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_mi.png", Label: "Mi"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_fa.png", Label: "Fa"},
			}},
		{ID: "mn002", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/re.mp3", Answers: []string{"rê", "re"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_sol.png", Label: "Sol"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_re.png", Label: "Rê"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_la.png", Label: "La"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_si.png", Label: "Si"},
			}},
		{ID: "mn003", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/mi.mp3", Answers: []string{"mi"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_fa.png", Label: "Fa"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_sol.png", Label: "Sol"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_mi.png", Label: "Mi"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_do.png", Label: "Đô"},
			}},
		{ID: "mn004", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/fa.mp3", Answers: []string{"fa"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_fa.png", Label: "Fa"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_la.png", Label: "La"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_si.png", Label: "Si"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_re.png", Label: "Rê"},
			}},
		{ID: "mn005", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/sol.mp3", Answers: []string{"son", "sol"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_mi.png", Label: "Mi"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_sol.png", Label: "Sol"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_do.png", Label: "Đô"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_re.png", Label: "Rê"},
			}},
		{ID: "mn006", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/la.mp3", Answers: []string{"la"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_si.png", Label: "Si"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_fa.png", Label: "Fa"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_la.png", Label: "La"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_mi.png", Label: "Mi"},
			}},
		{ID: "mn007", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/si.mp3", Answers: []string{"si"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_re.png", Label: "Rê"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_si.png", Label: "Si"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_sol.png", Label: "Sol"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_la.png", Label: "La"},
			}},
		{ID: "mn008", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/do.mp3", Answers: []string{"đô", "do"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_do.png", Label: "Đô"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_mi.png", Label: "Mi"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_sol.png", Label: "Sol"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_si.png", Label: "Si"},
			}},
		{ID: "mn009", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/re.mp3", Answers: []string{"rê", "re"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_fa.png", Label: "Fa"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_re.png", Label: "Rê"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_do.png", Label: "Đô"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_la.png", Label: "La"},
			}},
		{ID: "mn010", Question: "Nghe âm thanh và chọn nốt nhạc tương ứng:", AudioURL: "/assets/audio/notes/mi.mp3", Answers: []string{"mi"}, Points: 20, Level: 3,
			Options: []Option{
				{ID: "opt1", ImageURL: "/assets/images/games/note_la.png", Label: "La"},
				{ID: "opt2", ImageURL: "/assets/images/games/note_si.png", Label: "Si"},
				{ID: "opt3", ImageURL: "/assets/images/games/note_mi.png", Label: "Mi"},
				{ID: "opt4", ImageURL: "/assets/images/games/note_sol.png", Label: "Sol"},
			}},
	},
	"guess-pose": {
		{ID: "gp001", Question: "Thế võ Vovinam này?", ImageURL: "/assets/images/games/pose_dontay1.png", Answers: []string{"đòn tay số 1", "đòn tay 1", "don tay 1"}, Points: 15, Level: 1},
		{ID: "gp002", Question: "Tên thế võ này là gì?", ImageURL: "/assets/images/games/pose_chemso4.png", Answers: []string{"chém số 4", "chem so 4", "đòn chân số 4", "don chan 4"}, Points: 15, Level: 1},
	},
	"guess-stance": {
		{ID: "gs001", Question: "Tên thế tấn này?", ImageURL: "/assets/images/games/stance_trungbinhtan.png", Answers: []string{"trung bình tấn", "trung binh tan"}, Points: 12, Level: 1},
		{ID: "gs002", Question: "Đây là thế tấn gì trong Vovinam?", ImageURL: "/assets/images/games/stance_chuadinh.png", Answers: []string{"thế tấn chữ đinh", "tấn chữ đinh", "chữ đinh tấn", "chu dinh tan", "tan chu dinh"}, Points: 12, Level: 1},
	},
}

// questionLookup is a flat id index for answer checking.
var questionLookup = func() map[string]Question {
	lookup := make(map[string]Question)
	for gameType, questions := range questionBank {
		for _, q := range questions {
			q.Type = gameType
			lookup[q.ID] = q
		}
	}
	return lookup
}()

func ByType(gameType string) []Question {
	questions, ok := questionBank[gameType]
	if !ok {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Type = gameType
		out[i] = q
	}
	return out
}

func ByID(id string) (Question, bool) {
	q, ok := questionLookup[id]
	return q, ok
}

func Types() []string {
	types := make([]string, 0, len(questionBank))
	for t := range questionBank {
		types = append(types, t)
	}
	return types
}
