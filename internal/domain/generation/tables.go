package generation

// keyboardAdjacent maps each character to its neighbors on a QWERTY layout.
// Used by replacement-style transforms: a typo is most likely a key next to
// the intended one.
var keyboardAdjacent = map[byte]string{
	'1': "2q", '2': "13wq", '3': "24we", '4': "35er", '5': "46rt",
	'6': "57ty", '7': "68yu", '8': "79ui", '9': "80io", '0': "9po",
	'q': "12wa", 'w': "q23esa", 'e': "w34rds", 'r': "e45tfd", 't': "r56ygf",
	'y': "t67uhg", 'u': "y78ijh", 'i': "u89okj", 'o': "i90plk", 'p': "o0l",
	'a': "qwsz", 's': "awedxz", 'd': "serfcx", 'f': "drtgvc", 'g': "ftyhbv",
	'h': "gyujnb", 'j': "huikmn", 'k': "jiolm", 'l': "kop",
	'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhjm", 'm': "njk",
}

// glyphs maps each character to visually similar replacements. ASCII
// look-alikes come first, IDN confusables after; single-position
// substitutions only.
var glyphs = map[byte][]string{
	'a': {"4", "@", "а", "à", "á", "â", "ã", "ä"},
	'b': {"6", "8", "ь", "ḅ"},
	'c': {"с", "ç", "ċ"},
	'd': {"ԁ", "đ", "ḍ"},
	'e': {"3", "е", "è", "é", "ê", "ë", "ė"},
	'g': {"9", "q", "ġ", "ğ"},
	'h': {"һ", "ħ", "ḥ"},
	'i': {"1", "l", "і", "ì", "í", "î", "ï"},
	'j': {"ј", "ĵ"},
	'k': {"ḳ", "ķ"},
	'l': {"1", "i", "ł", "ĺ"},
	'm': {"м", "ṃ"},
	'n': {"ń", "ñ", "ṇ"},
	'o': {"0", "о", "ò", "ó", "ô", "õ", "ö", "ø"},
	'p': {"р", "ṕ"},
	'q': {"g", "ԛ"},
	'r': {"г", "ŕ", "ṛ"},
	's': {"5", "$", "ѕ", "ś", "ş"},
	't': {"7", "т", "ţ", "ṭ"},
	'u': {"ü", "ù", "ú", "û", "υ"},
	'v': {"ν", "ѵ"},
	'w': {"ŵ", "ẁ", "ẃ"},
	'x': {"х", "ẋ"},
	'y': {"у", "ý", "ÿ"},
	'z': {"2", "ź", "ż", "ž"},
	'0': {"o"},
	'1': {"l", "i"},
	'2': {"z"},
	'3': {"e"},
	'4': {"a"},
	'5': {"s"},
	'7': {"t"},
	'8': {"b"},
	'9': {"g"},
}

// numeralSwaps pairs letters with the digits commonly used to spell them and
// vice versa.
var numeralSwaps = map[byte]byte{
	'o': '0', '0': 'o',
	'l': '1', 'i': '1', '1': 'l',
	'z': '2', '2': 'z',
	'e': '3', '3': 'e',
	'a': '4', '4': 'a',
	's': '5', '5': 's',
	't': '7', '7': 't',
	'b': '8', '8': 'b',
	'g': '9', '9': 'g',
}

// numberWords maps spelled-out numbers to digits; swapped in both directions.
var numberWords = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "zero": "0",
}

// fusedTLDs are the suffixes most often glued onto a label when the victim
// forgets the dot ("getir.com" -> "getircom").
var fusedTLDs = []string{"com", "net", "org", "co", "io", "app"}

// fusedSLDs are second-level labels fused into the brand the same way
// ("google.co.uk" -> "googleco").
var fusedSLDs = []string{"co", "com", "gov", "edu", "ac", "org"}

const (
	insertionAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	vowels            = "aeiou"
	labelCharset      = "abcdefghijklmnopqrstuvwxyz0123456789-"
)
