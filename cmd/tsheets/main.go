// @title Transcript Sheets API
// @version 1.0
// @description Transcribes uploaded audio and video into a Google Sheets worksheet and maps VideoAsk form responses into rows.
// @BasePath /
package main

import (
	"transcript-sheets/cmd/tsheets/cmd"
)

func main() {
	cmd.Execute()
}
