// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

func Info(args ...any) {
	getSugar().Info(args...)
}

func Infof(format string, args ...any) {
	getSugar().Infof(format, args...)
}

func Infow(msg string, keysAndValues ...any) {
	getSugar().Infow(msg, keysAndValues...)
}

func Debug(args ...any) {
	getSugar().Debug(args...)
}

func Debugf(format string, args ...any) {
	getSugar().Debugf(format, args...)
}

func Debugw(msg string, keysAndValues ...any) {
	getSugar().Debugw(msg, keysAndValues...)
}

func Warn(args ...any) {
	getSugar().Warn(args...)
}

func Warnf(format string, args ...any) {
	getSugar().Warnf(format, args...)
}

func Warnw(msg string, keysAndValues ...any) {
	getSugar().Warnw(msg, keysAndValues...)
}

func Error(args ...any) {
	getSugar().Error(args...)
}

func Errorf(format string, args ...any) {
	getSugar().Errorf(format, args...)
}

func Errorw(msg string, keysAndValues ...any) {
	getSugar().Errorw(msg, keysAndValues...)
}

func Fatalf(format string, args ...any) {
	getSugar().Fatalf(format, args...)
}
