package main

import "github.com/MarcoCDuran/FinancialHealth/cmd"

func main() {
	cmd.Execute()
}
