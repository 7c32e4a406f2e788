package requests

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// MaxImageSize is the upload limit for profile images (2 MB).
const MaxImageSize = 2 << 20

var imageExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}

var imageContentTypes = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true}

type RegisterRequest struct {
	Name                 string `json:"name" form:"name" binding:"required,max=255"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" form:"role" binding:"required,oneof=patient doctor"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type DepartmentRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=120"`
}

// DoctorRequest is used for both create and update; update replaces every field.
type DoctorRequest struct {
	Contact      string                `json:"contact" form:"contact" binding:"required,max=255"`
	Bio          string                `json:"bio" form:"bio" binding:"required"`
	DepartmentID uint                  `json:"department_id" form:"department_id" binding:"required"`
	Image        *multipart.FileHeader `json:"-" form:"image"`
}

func (r *DoctorRequest) check() map[string][]string {
	return checkImage(r.Image)
}

type PatientRequest struct {
	DOB    string                `json:"dob" form:"dob" binding:"required,ymd,before_today"`
	Gender string                `json:"gender" form:"gender" binding:"required,oneof=male female other"`
	Image  *multipart.FileHeader `json:"-" form:"image"`
}

func (r *PatientRequest) check() map[string][]string {
	return checkImage(r.Image)
}

type ScheduleRequest struct {
	WeekDay   string `json:"week_day" form:"week_day" binding:"required,weekday"`
	StartTime string `json:"start_time" form:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" form:"end_time" binding:"required,hhmm"`
}

// check also canonicalises the week day, so handlers store "Monday" for "monday".
func (r *ScheduleRequest) check() map[string][]string {
	r.WeekDay = NormalizeWeekDay(r.WeekDay)
	// Both values are zero padded H:i, so string order is time order.
	if r.EndTime <= r.StartTime {
		return map[string][]string{"end_time": {"The end_time field must be a time after start_time."}}
	}
	return nil
}

type AppointmentRequest struct {
	DoctorID    uint   `json:"doctor_id" form:"doctor_id" binding:"required"`
	Description string `json:"description" form:"description" binding:"required"`
	Time        string `json:"time" form:"time" binding:"required,hhmm"`
	Date        string `json:"date" form:"date" binding:"required,ymd"`
}

func checkImage(fh *multipart.FileHeader) map[string][]string {
	if fh == nil {
		return nil
	}
	invalid := map[string][]string{"image": {"The image field must be a file of type: jpeg, png, jpg, gif."}}

	if fh.Size > MaxImageSize {
		return map[string][]string{"image": {fmt.Sprintf("The image field must not be greater than %d kilobytes.", MaxImageSize>>10)}}
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return invalid
	}

	f, err := fh.Open()
	if err != nil {
		return map[string][]string{"image": {"The image failed to upload."}}
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := f.Read(head)
	if !imageContentTypes[http.DetectContentType(head[:n])] {
		return invalid
	}
	return nil
}
