package cache

import "strconv"

func memberFor(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func userFromMember(member string) (uint, error) {
	id, err := strconv.ParseUint(member, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
