package billing

// Alphabet is the base-36 alphabet used for check characters.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// BaseLength is the length of a base code (service + year + payload).
const BaseLength = 10

var weights = [BaseLength]int{3, 7, 1, 9, 3, 7, 1, 9, 3, 7}

// WeightedSum returns the sum of the code point of each character of base
// multiplied by the weight at the same position. Characters past BaseLength
// are ignored.
func WeightedSum(base string) int {
	sum := 0
	i := 0
	for _, r := range base {
		if i == BaseLength {
			break
		}
		sum += int(r) * weights[i]
		i++
	}
	return sum
}

// CheckDigits computes the two check characters for a 10-character base code.
// The second character is (sum + first) mod 36, which is always twice the
// first mod 36.
func CheckDigits(base string) string {
	sum := WeightedSum(base)
	n := len(Alphabet)
	dv1 := sum % n
	dv2 := (sum + dv1) % n
	return string([]byte{Alphabet[dv1], Alphabet[dv2]})
}
