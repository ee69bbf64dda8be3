package phrase

// wordlist holds 256 short, phonetically distinct words, so each word of a
// phrase carries 8 bits and a 4-word phrase carries 32.
var wordlist = []string{
	"acorn", "adobe", "aegis", "alarm", "album", "alley", "amber", "angle",
	"anvil", "apple", "apron", "arrow", "aspen", "atlas", "attic", "audio",
	"bacon", "badge", "bagel", "banjo", "barge", "basil", "beach", "beard",
	"begin", "bench", "birch", "bison", "blade", "blaze", "bloom", "bluff",
	"board", "bonus", "booth", "brass", "bread", "brick", "bride", "brook",
	"broom", "brush", "buddy", "bugle", "bunch", "burst", "cabin", "cable",
	"cameo", "camp", "candy", "canoe", "cargo", "cedar", "cello", "chalk",
	"charm", "chess", "chief", "choir", "cider", "cigar", "civic", "claim",
	"clamp", "click", "cliff", "climb", "clock", "cloud", "clove", "coach",
	"cobra", "cocoa", "comet", "coral", "couch", "cover", "crane", "crate",
	"creek", "crisp", "crown", "curve", "daisy", "dance", "delta", "denim",
	"depot", "derby", "diner", "ditch", "dozen", "draft", "drama", "drift",
	"drum", "dune", "eagle", "early", "earth", "easel", "ebony", "edge",
	"elbow", "elder", "elm", "ember", "envoy", "epoch", "essay", "evoke",
	"fable", "fancy", "feast", "fence", "fern", "ferry", "fever", "fiber",
	"field", "fjord", "flame", "flask", "fleet", "flint", "flock", "flora",
	"flute", "focus", "forge", "forum", "frame", "frost", "fruit", "gable",
	"galaxy", "gauge", "gavel", "gecko", "genie", "giant", "ginger", "glade",
	"globe", "gloss", "gourd", "grain", "grape", "grove", "guide", "gulf",
	"habit", "harbor", "hatch", "hazel", "heron", "hinge", "honey", "horse",
	"hotel", "house", "humor", "hurdle", "igloo", "image", "index", "inlet",
	"iris", "irony", "ivory", "jade", "jelly", "jewel", "judge", "juice",
	"jumbo", "kayak", "kettle", "kiosk", "kitten", "knack", "knoll", "koala",
	"label", "lagoon", "lance", "lapel", "larch", "latch", "laurel", "ledge",
	"lemon", "lever", "lilac", "linen", "lively", "lobby", "locket", "lodge",
	"lunar", "lyric", "magnet", "maple", "marble", "mason", "meadow", "medal",
	"melon", "mentor", "merit", "mesa", "minnow", "mocha", "molar", "month",
	"moral", "motif", "mural", "music", "napkin", "nectar", "niche", "noble",
	"north", "notch", "novel", "nugget", "oasis", "ocean", "olive", "onion",
	"opera", "orbit", "otter", "owl", "oxide", "paddle", "pagoda", "palm",
	"panda", "pastel", "patio", "pearl", "pecan", "pedal", "penny", "picnic",
	"pilot", "pine", "pivot", "plaza", "plums", "polar", "quartz", "zebra",
}
