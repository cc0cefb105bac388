package ktp_test

import (
	"fmt"

	"discountocr/internal/ktp"
)

func ExampleClean() {
	fmt.Println(ktp.Clean("NIK   : 3201*0102\nNama : BUDI, S.Kom."))
	// Output: NIK 32010102 Nama BUDI, S.Kom.
}
