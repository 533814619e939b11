// main.go
//
// Productivity dashboard service for real estate agents
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of expiestack.
// expiestack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// expiestack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with expiestack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/localnerve/expiestack/internal/config"
	"github.com/localnerve/expiestack/internal/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	base := "http://localhost:" + cfg.Port
	if err := utils.PingService(base, 1500*time.Millisecond); err != nil {
		logrus.Errorf("Service not reachable: %v", err)
		os.Exit(1)
	}

	// Perform health check
	result, err := utils.ProbeHealth(base+"/health", 3*time.Second)

	// Output result as JSON
	output, marshalErr := json.MarshalIndent(result, "", "  ")
	if marshalErr != nil {
		logrus.Fatalf("Failed to marshal health check result: %v", marshalErr)
	}
	fmt.Println(string(output))

	// Exit with appropriate code
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
	os.Exit(0)
}
